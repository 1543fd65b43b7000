package domain

// Media holds the pictures attached to a property listing. Paths may be
// absolute URLs or server-relative paths.
type Media struct {
	MainPicture string   `json:"mainPicture"`
	MoreImages  []string `json:"moreImages"`
}

// Cover returns the listing's main picture, falling back to the first
// gallery image.
func (m Media) Cover() string {
	if m.MainPicture != "" {
		return m.MainPicture
	}
	if len(m.MoreImages) > 0 {
		return m.MoreImages[0]
	}
	return ""
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Property is a listed colony/property record. Media, Coordinates and
// Categories are optional server-side and may be absent.
type Property struct {
	ID          string       `json:"_id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Location    string       `json:"location"`
	Media       *Media       `json:"media"`
	Coordinates *Coordinates `json:"coordinates"`
	Categories  []string     `json:"categories"`
}

func (p Property) CoverImage() string {
	if p.Media == nil {
		return ""
	}
	return p.Media.Cover()
}
