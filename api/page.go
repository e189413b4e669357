package api

import "html/template"

// PageData is rendered by the form page
type PageData struct {
	Text       string
	Size       string
	Border     string
	Fill       string
	Background string
	LogoPath   string
	SavePath   string

	HasImage bool
	Width    int
	Height   int
	Version  int

	Notice string
	IsErr  bool
}

var pageTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>QR Code Generator</title>
<style>
body { font-family: sans-serif; margin: 2em; }
form.params label { display: block; margin: .4em 0; }
.notice { padding: .6em; margin-bottom: 1em; background: #e6f4ea; }
.notice.error { background: #fce8e6; }
.preview img { image-rendering: pixelated; max-width: 100%; border: 1px solid #ccc; }
</style>
</head>
<body>
<h1>QR Code Generator</h1>
{{if .Notice}}<div class="notice{{if .IsErr}} error{{end}}" role="alert">{{.Notice}}</div>{{end}}
<form class="params" method="post" action="/generate">
  <label>Text <input type="text" name="text" size="60" value="{{.Text}}"></label>
  <label>Module size <input type="text" name="size" size="4" value="{{.Size}}"></label>
  <label>Border <input type="text" name="border" size="4" value="{{.Border}}"></label>
  <label>Fill color <input type="text" name="fill" size="10" value="{{.Fill}}"></label>
  <label>Background color <input type="text" name="background" size="10" value="{{.Background}}"></label>
  <label>Logo file <input type="text" name="logo" size="60" value="{{.LogoPath}}" placeholder="/path/to/logo.png"></label>
  <label><input type="checkbox" name="verify" value="1"> Decode after generating</label>
  <button type="submit">Generate</button>
</form>
<form method="post" action="/save">
  <label>Save as <input type="text" name="path" size="60" value="{{.SavePath}}"></label>
  <button type="submit">Save</button>
</form>
<form method="post" action="/clear">
  <button type="submit">Clear</button>
</form>
<div class="preview">
{{if .HasImage}}<img src="/preview.png?v={{.Version}}-{{.Width}}" width="{{.Width}}" height="{{.Height}}" alt="QR code preview">
<p>Version {{.Version}}, {{.Width}}&times;{{.Height}} px</p>{{else}}<p>No QR code generated yet.</p>{{end}}
</div>
</body>
</html>
`))
