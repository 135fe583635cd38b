package shared

import "github.com/rohanthewiz/element"

// Banner is the site header with the brand linking home.
type Banner struct {
	Brand string
	Href  string
}

// Render implements the element.Component interface
func (b Banner) Render(builder *element.Builder) any {
	builder.Header("class", "site-banner").R(
		builder.A("class", "site-banner__brand", "href", b.Href).T(b.Brand+" &#x1F9EA;"),
	)
	return nil
}
