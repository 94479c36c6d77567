// Package utils provides common utility functions for the stock-sync application.
// It includes helper functions for loose conversion of table cell values, which
// arrive as strings from the row store but carry numeric and boolean meaning.
package utils
