package schema

// CatalogBookInstanceTable represents the 'catalog.bookinstance' table
type CatalogBookInstanceTable struct {
	Table      string
	ID         string
	BookID     string
	Imprint    string
	DueBack    string
	BorrowerID string
	Status     string
}

// CatalogBookInstance is the schema definition for catalog.bookinstance
var CatalogBookInstance = CatalogBookInstanceTable{
	Table:      "catalog.bookinstance",
	ID:         "id",
	BookID:     "bookid",
	Imprint:    "imprint",
	DueBack:    "dueback",
	BorrowerID: "borrowerid",
	Status:     "status",
}

func (t CatalogBookInstanceTable) Columns() []string {
	return []string{t.ID, t.BookID, t.Imprint, t.DueBack, t.BorrowerID, t.Status}
}
