package entity

// Feature bosh sahifadagi afzallik bloki
type Feature struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Testimonial mijoz fikri
type Testimonial struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Content string `json:"content"`
	Rating  int    `json:"rating"`
	Image   string `json:"image,omitempty"`
}

// HomePage bosh sahifa tarkibi
type HomePage struct {
	Featured     []Product     `json:"featured"`
	Categories   []Category    `json:"categories"`
	Features     []Feature     `json:"features"`
	Testimonials []Testimonial `json:"testimonials"`
}

// ContactInfo footer kontakt bloki
type ContactInfo struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}
