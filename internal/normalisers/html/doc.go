// Package html extracts readable text from the HTML fragments that course
// catalogs and search APIs return in titles and descriptions: tags, scripts
// and styles are stripped, entities decoded and whitespace collapsed.
package html
