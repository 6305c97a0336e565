package rating

// CreateRating - форма для создания отзыва на товар.
// Поля вне формы из запроса отбрасываются при декодировании.
type CreateRating struct {
	ProductID string `json:"product_id"`
	Rating    int    `json:"rating"`
	Text      string `json:"text"`
}

// UpdateRating - форма для обновления отзыва.
// Rating обязателен, ProductID и Text опциональны.
type UpdateRating struct {
	ProductID string `json:"product_id,omitempty"`
	Rating    int    `json:"rating"`
	Text      string `json:"text,omitempty"`
}
