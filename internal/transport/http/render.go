package transporthttp

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"
	"strings"

	"example.com/registro/internal/domain"
)

// Fault notices rendered for infrastructure errors.
const (
	MsgStoreFault = "No se pudo abrir el archivo para guardar el registro."
	MsgNotReady   = "El almacenamiento de registros no está disponible."
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(
	template.New("pages").Funcs(template.FuncMap{
		"channelLink": channelLink,
		"nl2br":       nl2br,
	}).ParseFS(templateFS, "templates/*.html"),
)

// confirmView carries a stored record into confirm.html. Every
// template.HTML field holds output of domain.Clean, which is already
// escaped; Email is not escaped yet and is left to the template.
type confirmView struct {
	Name       template.HTML
	Alias      template.HTML
	Platform   template.HTML
	Channel    template.HTML
	Country    template.HTML
	Experience int
	Schedule   template.HTML
	Game       template.HTML
	Goal       template.HTML
	Email      string
	LandingURL string
}

func newConfirmView(rec domain.Record, landingURL string) confirmView {
	return confirmView{
		Name:       template.HTML(rec.Name),
		Alias:      template.HTML(rec.Alias),
		Platform:   template.HTML(rec.Platform),
		Channel:    template.HTML(rec.Channel),
		Country:    template.HTML(rec.Country),
		Experience: rec.Experience,
		Schedule:   template.HTML(rec.Schedule),
		Game:       template.HTML(rec.Game),
		Goal:       template.HTML(rec.Goal),
		Email:      rec.Email,
		LandingURL: landingURL,
	}
}

type errorsView struct {
	Messages   []string
	LandingURL string
}

type faultView struct {
	Message string
}

// channelLink renders an already escaped link as an anchor opening in a new
// tab. Quotes are escaped in the input, so it cannot leave the attribute.
func channelLink(link template.HTML) template.HTML {
	return template.HTML(`<a href="` + string(link) + `" target="_blank" rel="noopener noreferrer">` + string(link) + `</a>`) // #nosec G203
}

var breakReplacer = strings.NewReplacer(
	"\r\n", "<br />\r\n",
	"\n\r", "<br />\n\r",
	"\n", "<br />\n",
	"\r", "<br />\r",
)

// nl2br inserts a line break element before every newline sequence.
func nl2br(s template.HTML) template.HTML {
	return template.HTML(breakReplacer.Replace(string(s))) // #nosec G203
}

// WritePage renders the named template with an HTML content type.
// Rendering happens into a buffer first so a template failure never leaves
// a half-written page behind.
func WritePage(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("[http] render %s FAILED: err=%v", name, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
