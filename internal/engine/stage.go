package engine

// Пять фиксированных стадий для наблюдаемости. Подписи привязаны
// только к порогам прогресса и не влияют на пиксели.
var stages = []struct {
	at    float64
	label string
}{
	{0.85, "Rendering final sequence"},
	{0.55, "Applying cinematic grade"},
	{0.25, "Animating neural keyframes"},
	{0.0, "Designing volumetric scene"},
}

// setupLabel показывается до первого кадра (отрицательный прогресс).
const setupLabel = "Parsing cinematic intent"

// StageLabel возвращает человекочитаемую подпись стадии для значения
// прогресса.
func StageLabel(progress float64) string {
	for _, s := range stages {
		if progress >= s.at {
			return s.label
		}
	}
	return setupLabel
}
