// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import "context"

// Repository defines the data access contract for genres and languages.
type Repository interface {

	// ## Genre Data Access

	// ListGenres returns every genre ordered by name.
	ListGenres(context context.Context) ([]*Genre, error)

	// GetGenre returns a genre or a not-found error.
	GetGenre(context context.Context, id int) (*Genre, error)

	// CreateGenre inserts the genre and fills its ID.
	CreateGenre(context context.Context, genre *Genre) error

	// DeleteGenre removes the genre and, through the junction cascade, its book links.
	DeleteGenre(context context.Context, id int) error

	// ## Language Data Access

	// ListLanguages returns every language ordered by name.
	ListLanguages(context context.Context) ([]*Language, error)

	// GetLanguage returns a language or a not-found error.
	GetLanguage(context context.Context, id int) (*Language, error)

	// CreateLanguage inserts the language and fills its ID.
	CreateLanguage(context context.Context, language *Language) error

	// DeleteLanguage removes the language; books keep existing with no language.
	DeleteLanguage(context context.Context, id int) error
}
