// Package scaffold renders the embedded Python project skeleton. It powers
// "pyskel generate": every path segment and every .tmpl file is a
// text/template over the project metadata, and the packaging descriptor of
// the freshly rendered tree is evaluated and validated before returning.
package scaffold
