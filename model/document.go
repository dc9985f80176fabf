package model

// Page is one reconstructed notebook page with its ordered content.
type Page struct {
	Title            string
	Level            int // nesting level within the section's page list
	Author           string
	CreationTime     string
	LastModifiedTime string
	Elements         []Element
}

// AddElement appends an element to the page.
func (p *Page) AddElement(elem Element) {
	p.Elements = append(p.Elements, elem)
}

// ExtractText concatenates the text of all rich text elements.
func (p *Page) ExtractText() string {
	var text string
	for _, elem := range p.Elements {
		if rt, ok := elem.(*RichText); ok {
			text += rt.Text() + "\n"
		}
	}
	return text
}

// Images returns all image elements on the page.
func (p *Page) Images() []*Image {
	var images []*Image
	for _, elem := range p.Elements {
		if img, ok := elem.(*Image); ok {
			images = append(images, img)
		}
	}
	return images
}

// Attachments returns all embedded file elements on the page.
func (p *Page) Attachments() []*EmbeddedFile {
	var files []*EmbeddedFile
	for _, elem := range p.Elements {
		if ef, ok := elem.(*EmbeddedFile); ok {
			files = append(files, ef)
		}
	}
	return files
}

// Section is the content of one .one section file.
type Section struct {
	Name     string
	FilePath string
	Pages    []*Page
}

// AddPage appends a page to the section.
func (s *Section) AddPage(page *Page) {
	s.Pages = append(s.Pages, page)
}

// PageCount returns the number of pages.
func (s *Section) PageCount() int { return len(s.Pages) }

// Notebook is a named group of sections.
type Notebook struct {
	Name     string
	Sections []*Section
}

// NewNotebook creates an empty notebook.
func NewNotebook(name string) *Notebook {
	return &Notebook{Name: name}
}

// AddSection appends a section to the notebook.
func (n *Notebook) AddSection(section *Section) {
	n.Sections = append(n.Sections, section)
}
