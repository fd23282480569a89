package transporthttp

import (
	"errors"
	"log"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"example.com/registro/internal/config"
	"example.com/registro/internal/domain"
	"example.com/registro/internal/storage"
	"example.com/registro/internal/tracing"
)

type ServerDeps struct {
	Cfg    config.Config
	Store  storage.Appender
	Tracer trace.Tracer
	Now    func() time.Time
}

// --- Health ---

func (d *ServerDeps) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (d *ServerDeps) HandleReadyz(w http.ResponseWriter, r *http.Request) {
	if rd, ok := d.Store.(storage.Readier); ok {
		if err := rd.Ready(r.Context()); err != nil {
			log.Printf("[api] readiness check FAILED: err=%v", err)
			WritePage(w, http.StatusServiceUnavailable, "fault.html", faultView{Message: MsgNotReady})
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ready"}`))
}

// --- Registration form ---

// HandleSubmit processes one registration form post: sanitize, validate,
// append to the store, then confirm. Anything but POST is redirected to the
// landing page.
func (d *ServerDeps) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	defer DrainBody(r)
	if r.Method != http.MethodPost {
		http.Redirect(w, r, d.Cfg.HTTP.LandingURL, http.StatusFound)
		return
	}

	ctx := r.Context()
	rid := RequestIDFrom(ctx)
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.String("registro.request_id", rid))

	// An unreadable or oversized body leaves PostForm empty and is reported
	// through the normal validation messages.
	if err := d.parseForm(r); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Printf("[api] form body over %d bytes request_id=%s", tooLarge.Limit, rid)
		} else {
			log.Printf("[api] parse form: err=%v request_id=%s", err, rid)
		}
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	rec := domain.NewRecord(domain.FormFromValues(r.PostForm), d.Now())

	if errs := domain.ValidateRecord(&rec); len(errs) > 0 {
		span.SetAttributes(attribute.Int("registro.validation_errors", len(errs)))
		log.Printf("[api] submission rejected: errors=%d request_id=%s", len(errs), rid)
		WritePage(w, d.status(http.StatusUnprocessableEntity), "errors.html", errorsView{
			Messages:   domain.Messages(errs),
			LandingURL: d.Cfg.HTTP.LandingURL,
		})
		return
	}

	if err := d.Store.Append(ctx, rec); err != nil {
		log.Printf("[api] store append FAILED: err=%v request_id=%s", err, rid)
		WritePage(w, d.status(http.StatusInternalServerError), "fault.html", faultView{Message: MsgStoreFault})
		return
	}
	log.Printf("[api] submission stored: alias=%s request_id=%s", rec.Alias, rid)

	WritePage(w, http.StatusOK, "confirm.html", newConfirmView(rec, d.Cfg.HTTP.LandingURL))
}

// parseForm decodes urlencoded and multipart bodies into r.PostForm.
func (d *ServerDeps) parseForm(r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	err := r.ParseMultipartForm(d.Cfg.HTTP.MaxBodyBytes)
	if errors.Is(err, http.ErrNotMultipart) {
		return nil
	}
	return err
}

// status maps an error status to 200 when strict status codes are off.
func (d *ServerDeps) status(code int) int {
	if !d.Cfg.HTTP.StrictStatus {
		return http.StatusOK
	}
	return code
}

// --- Router ---

func (d *ServerDeps) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", d.HandleHealthz)
	mux.HandleFunc("/readyz", d.HandleReadyz)

	var submit http.Handler = http.HandlerFunc(d.HandleSubmit)
	submit = BodyLimit(d.Cfg.HTTP.MaxBodyBytes)(submit)
	mux.Handle(d.Cfg.HTTP.SubmitPath, submit)

	if d.Cfg.HTTP.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(d.Cfg.HTTP.StaticDir)))
	}

	var h http.Handler = mux
	h = tracing.HTTPMiddleware(d.Tracer)(h)
	h = RequestID(h)
	return h
}
