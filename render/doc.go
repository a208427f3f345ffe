// Package render defines the template-rendering boundary of the strada
// engine and the concrete engines it ships with.
//
// The dispatcher only ever sees the Renderer interface; the concrete
// engine is selected once, at build time, through the template_engine
// setting. Two engines are built in:
//
//	html    gofiber/template/html: Go html/template files with layouts
//	django  gofiber/template/django: Django-flavored template files
//
// Additional engines register through RegisterEngine during the build
// phase. Template sets load once at engine construction; Options.Reload
// re-reads them per render and exists for development use only.
package render
