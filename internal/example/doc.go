// Package example declares the demo blog and project schema and a
// deterministic dataset to project it over.
//
// Blogs carry entries written by authors and discussed in comments.
// Companies reference polymorphic projects, stored under the Project base
// with a polymorphic_ctype discriminator selecting ArtProject or
// ResearchProject.
package example
