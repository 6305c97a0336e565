package category

// CreateCategory - форма для создания категории товаров
type CreateCategory struct {
	Name     string   `json:"name"`
	Children []string `json:"children,omitempty"`
}

// UpdateCategory - форма для обновления категории
type UpdateCategory struct {
	Name     string   `json:"name,omitempty"`
	Children []string `json:"children,omitempty"`
}
