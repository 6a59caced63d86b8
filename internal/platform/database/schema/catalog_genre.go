package schema

// CatalogGenreTable represents the 'catalog.genre' table
type CatalogGenreTable struct {
	Table string
	ID    string
	Name  string
}

// CatalogGenre is the schema definition for catalog.genre
var CatalogGenre = CatalogGenreTable{
	Table: "catalog.genre",
	ID:    "id",
	Name:  "name",
}

// CatalogLanguageTable represents the 'catalog.language' table
type CatalogLanguageTable struct {
	Table string
	ID    string
	Name  string
}

// CatalogLanguage is the schema definition for catalog.language
var CatalogLanguage = CatalogLanguageTable{
	Table: "catalog.language",
	ID:    "id",
	Name:  "name",
}
