package domain

// criterionDescriptions is presentation text shown above each criterion's
// score bands. It carries no scoring logic.
var criterionDescriptions = map[int]string{
	1: "Evalúa el grado en que la experiencia responde a las necesidades, problemáticas y características del contexto educativo en que se implementa.",
	2: "Valora la claridad y solidez de los marcos conceptuales, pedagógicos y metodológicos que sustentan la experiencia y su articulación con el PEI y el PMI.",
	3: "Indica la incorporación de prácticas novedosas que transforman las costumbres institucionales y generan cambios sustanciales en los procesos educativos.",
	4: "Examina los logros obtenidos frente a los objetivos planteados, la mejora en aprendizajes y el impacto institucional.",
	5: "Mide el nivel de apropiación, apoyo y promoción de la experiencia por parte de los líderes y la comunidad educativa.",
	6: "Se refiere al uso sistemático de mecanismos e instrumentos que permiten monitorear, evaluar periódicamente y ajustar la experiencia.",
	7: "Evalúa la capacidad de la experiencia para provocar cambios relevantes y sostenibles en las prácticas, saberes y relaciones escolares.",
	8: "Considera la viabilidad de mantener, fortalecer y consolidar la experiencia a lo largo del tiempo.",
	9: "Valora la potencialidad de adaptación, difusión y réplica de la experiencia en otros contextos educativos similares.",
}

// CriterionDescription returns the reference paragraph for a criterion.
func CriterionDescription(id int) string {
	return criterionDescriptions[id]
}

// TierReference is the threshold text shown on the final concept step.
var TierReference = []string{
	"Naciente: Menor o igual a 45 puntos",
	"Creciente: Mayor de 46 y menor o igual a 79 puntos",
	"Inspiradora: Mayor o igual a 80 puntos",
}
