// Package pipeline turns Markdown text into a complete, styled HTML page
// ready for printing:
//   - Markdown to HTML via Goldmark, with KaTeX math, autolinks, smart
//     typography, raw HTML passthrough and highlighted code fences
//   - relative image and link paths rewritten to file:// URLs
//   - the body wrapped in the document template and stylesheet
//
// Printing to PDF lives in the root katexpdf package (headless Chrome).
package pipeline
