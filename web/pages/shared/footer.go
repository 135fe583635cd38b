package shared

import "github.com/rohanthewiz/element"

// Footer closes the form card with a short note.
type Footer struct {
	Note string
}

func (f Footer) Render(b *element.Builder) any {
	b.Footer("class", "site-footer").R(
		b.Small("class", "sign-up__footnote").T(f.Note),
	)
	return nil
}
