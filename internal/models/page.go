package models

// PageSize is the fixed number of items per search page.
const PageSize = 10

// PageResult is one page of search results.
type PageResult struct {
	Items      []RecipeSummary `json:"items"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	Total      int             `json:"total"`
	TotalPages int             `json:"totalPages"`
}

// FilterOptions lists the values available for the area and category filters.
type FilterOptions struct {
	Areas      []string `json:"areas"`
	Categories []string `json:"categories"`
}
