// Package templates 内嵌的HTML模板
package templates

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Load 解析全部模板，供gin.Engine.SetHTMLTemplate使用
func Load() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"money":  func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"slice1": func(v interface{}) []interface{} { return []interface{}{v} },
	}).ParseFS(files, "*.html")
}
