// Package shared contains the page chrome common to every THE LAB page.
package shared

// Page is embedded by pages to get the site banner and footer.
type Page struct {
	Title string
}

// Banner returns the site header for the page.
func (p Page) Banner() Banner {
	return Banner{Brand: "THE LAB", Href: "/"}
}

func (p Page) Footer() Footer {
	return Footer{Note: "All fields are required"}
}
