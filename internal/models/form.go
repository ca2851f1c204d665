package models

// ProductForm holds the flat fields of the create/edit form.
// Price is already coerced; validation treats zero as missing.
type ProductForm struct {
	ID               string   `json:"id,omitempty"`
	Name             string   `json:"name" validate:"required"`
	Price            float64  `json:"price" validate:"required"`
	Description      string   `json:"description"`
	CategoryID       string   `json:"category_id" validate:"required"`
	MainImage        string   `json:"main_image,omitempty"`
	AdditionalImages []string `json:"additional_images"`
}

// FormFromProduct maps a stored product into flat form fields.
func FormFromProduct(p *Product) ProductForm {
	form := ProductForm{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		CategoryID:       p.CategoryID,
		AdditionalImages: []string{},
	}
	if p.Price != nil {
		form.Price = *p.Price
	}
	if p.MainMedia != nil {
		form.MainImage = p.MainMedia.Image
	}
	for _, item := range p.MediaItems {
		form.AdditionalImages = append(form.AdditionalImages, item.Image)
	}
	return form
}

// ToProduct builds the record persisted by the store: the main image is
// wrapped once and every additional image individually.
func (f ProductForm) ToProduct() *Product {
	price := f.Price
	p := &Product{
		ID:          f.ID,
		Name:        f.Name,
		Price:       &price,
		Description: f.Description,
		CategoryID:  f.CategoryID,
		MediaItems:  make([]MediaItem, 0, len(f.AdditionalImages)),
	}
	if f.MainImage != "" {
		p.MainMedia = &MediaItem{Image: f.MainImage}
	}
	for _, img := range f.AdditionalImages {
		p.MediaItems = append(p.MediaItems, MediaItem{Image: img})
	}
	return p
}
