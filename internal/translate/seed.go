package translate

// SeedCities returns the trusted Japanese-to-Russian dictionary for the
// cities NHK places on the weekly forecast map. These are present before any
// generation call; the model is only consulted for names outside this set.
func SeedCities() map[string]string {
	return map[string]string{
		"東京":  "Токио",
		"長野":  "Нагано",
		"新潟":  "Ниигата",
		"小笠原": "Огасавара",
		"大阪":  "Осака",
		"名古屋": "Нагоя",
		"金沢":  "Канадзава",
		"広島":  "Хиросима",
		"松江":  "Мацуэ",
		"福岡":  "Фукуока",
		"鹿児島": "Кагосима",
		"那覇":  "Наха",
		"仙台":  "Сэндай",
		"秋田":  "Акита",
		"札幌":  "Саппоро",
		"釧路":  "Кусиро",
		"高知":  "Коти",
	}
}
