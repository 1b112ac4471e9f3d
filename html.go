package main

import (
	"html/template"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
)

// htmlPage is the data behind the chart page.
type htmlPage struct {
	Title  string
	Source string
	Layout *Layout
	Config Config
	Served bool   // adds the upload form
	Error  string // last load error, shown above the chart
}

var htmlFuncs = template.FuncMap{
	"num": func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	},
	"ns": func(v float64) string {
		return humanize.Commaf(v)
	},
	// css marks config values as trusted style text; Config.validate keeps
	// them inside a single declaration.
	"css": func(v string) template.CSS {
		return template.CSS(v)
	},
	"zoomWidth": zoomWidth,
	"odd": func(row int) bool {
		return row%2 == 1
	},
}

var htmlTemplate = template.Must(template.New("page").Funcs(htmlFuncs).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
body { background: {{css .Config.Colors.Background}}; color: {{css .Config.Colors.Text}}; font-family: {{css .Config.Font.Family}}; margin: 0; }
#toolbar { display: flex; gap: 16px; align-items: center; padding: 8px 12px; border-bottom: 1px solid {{css .Config.Colors.Border}}; }
#inspector { padding: 6px 12px; min-height: 2.6em; }
#error { padding: 6px 12px; color: #b30000; }
#moments { overflow-x: auto; padding: 12px; }
#moments-content { position: relative; height: {{.Layout.Height}}px; }
.moment { position: absolute; box-sizing: border-box; height: {{.Config.Layout.MomentHeight}}px; min-width: 1px; overflow: hidden; white-space: nowrap; font-size: {{.Config.Font.Size}}px; background: {{css .Config.Colors.Moment}}; border: 1px solid {{css .Config.Colors.Border}}; }
.moment.odd { background: {{css .Config.Colors.MomentAlt}}; }
.moment:hover { background: {{css .Config.Colors.Selected}}; }
</style>
</head>
<body>
<div id="toolbar">
{{- if .Served}}
<form method="post" action="/load" enctype="multipart/form-data">
<input type="file" id="file-picker" name="trace" accept=".json,application/json" onchange="this.form.submit()">
</form>
{{- end}}
<label for="scale">Zoom</label>
<input type="range" id="scale" min="{{num .Config.Zoom.Min}}" max="{{num .Config.Zoom.Max}}" step="{{num .Config.Zoom.Step}}" value="{{num .Config.Zoom.Value}}">
{{- if .Source}}
<span>{{.Source}} &middot; {{len .Layout.Moments}} timers &middot; {{.Layout.Rows}} rows</span>
{{- end}}
</div>
{{- if .Error}}
<div id="error">{{.Error}}</div>
{{- end}}
<div id="inspector">
<div id="selected-name">Name:</div>
<div id="selected-duration">Duration:</div>
</div>
<div id="moments">
<div id="moments-content" style="width: {{num (zoomWidth .Config.Zoom.Value)}}px;">
{{- range .Layout.Moments}}
{{- $detail := index $.Layout.Details .ID}}
<div class="moment{{if odd .Row}} odd{{end}}" data-moment-id="{{.ID}}" data-name="{{$detail.Name}}" data-duration="{{ns $detail.DurationNs}}" style="left: {{num .LeftPercent}}%; width: {{num .WidthPercent}}%; top: {{.TopPixels}}px;">{{.Label}}</div>
{{- end}}
</div>
</div>
<script>
(function () {
  var scale = document.getElementById("scale");
  var content = document.getElementById("moments-content");
  var name = document.getElementById("selected-name");
  var duration = document.getElementById("selected-duration");

  scale.oninput = function () {
    content.style.width = Math.pow(10, -scale.value) + "px";
  };

  var moments = document.getElementsByClassName("moment");
  for (var i = 0; i < moments.length; i++) {
    (function (moment) {
      moment.onmouseenter = function () {
        name.textContent = "Name: " + moment.dataset.name;
        duration.textContent = "Duration: " + moment.dataset.duration + " ns";
      };
      moment.onmouseleave = function () {
        name.textContent = "Name:";
        duration.textContent = "Duration:";
      };
    })(moments[i]);
  }
})();
</script>
</body>
</html>
`))

// writeHTML renders the chart page to w.
func writeHTML(w io.Writer, page htmlPage) error {
	if page.Title == "" {
		page.Title = "Timers"
	}
	return htmlTemplate.Execute(w, page)
}
