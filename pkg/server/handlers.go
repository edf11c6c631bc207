package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/render"
)

// CSRFHeader carries the session token on JSON requests.
const CSRFHeader = "X-CSRF-Token"

// eventReply is returned by the JSON field endpoint, JSON form posts and the
// WebSocket channel.
type eventReply struct {
	View   render.View         `json:"view"`
	Effect string              `json:"effect"`
	Error  string              `json:"error,omitempty"`
	Errors map[string][]string `json:"errors,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(s.contract.Raw())
}

func (s *Server) renderOptions(sess *Session) render.RenderOptions {
	return render.RenderOptions{
		Action:      "/submit",
		ResetAction: "/reset",
		LiveURL:     "/ws",
		Hidden:      render.MergeHiddenFields(nil, render.CSRFToken(sess.CSRF)),
		Theme:       s.theme,
		IntroHTML:   s.cfg.IntroHTML,
	}
}

// view builds the session's current view, consuming any pending notice.
func (s *Server) view(sess *Session) render.View {
	view := render.NewView(s.contract, sess.ctrl.State(), s.policy)
	if notice := sess.takeNotice(); notice != nil {
		view = view.WithNotice(*notice)
	}
	return view
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())
	renderer, err := s.renderers.Negotiate(r.Header.Get("Accept"))
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.renderWith(w, r, renderer, sess)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())
	renderer, err := s.renderers.Negotiate("application/json")
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.renderWith(w, r, renderer, sess)
}

func (s *Server) renderWith(w http.ResponseWriter, r *http.Request, renderer render.Renderer, sess *Session) {
	out, err := renderer.Render(r.Context(), s.view(sess), s.renderOptions(sess))
	if err != nil {
		s.serverError(w, r, fmt.Errorf("render %s: %w", renderer.Name(), err))
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(out)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())
	values, err := readSubmission(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !s.checkCSRF(r, sess) {
		writeError(w, http.StatusForbidden, "invalid csrf token")
		return
	}

	ctx := r.Context()
	for _, field := range form.Fields() {
		value, ok := values[field]
		if !ok {
			continue
		}
		if _, err := sess.ctrl.Change(ctx, field, value); err != nil {
			s.serverError(w, r, err)
			return
		}
	}

	state, effect, err := sess.ctrl.Submit(ctx)
	s.metrics.submissions.WithLabelValues(effect.Kind.String()).Inc()
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.logger.InfoContext(ctx, "form submitted", "session", sess.ID, "outcome", effect.Kind.String())

	if wantsJSON(r) {
		status := http.StatusOK
		if effect.Kind == form.EffectRejected {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, s.reply(sess, state, effect))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed form body")
		return
	}
	if !s.checkCSRF(r, sess) {
		writeError(w, http.StatusForbidden, "invalid csrf token")
		return
	}

	state := sess.ctrl.Reset(r.Context())
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, eventReply{
			View:   render.NewView(s.contract, state, s.policy),
			Effect: form.EffectReset.String(),
		})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type fieldBody struct {
	Value string `json:"value"`
}

func (s *Server) handleField(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())
	field, err := form.ParseField(chi.URLParam(r, "field"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	value, err := readFieldValue(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !s.checkCSRF(r, sess) {
		writeError(w, http.StatusForbidden, "invalid csrf token")
		return
	}

	state, err := sess.ctrl.Change(r.Context(), field, value)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, eventReply{
		View:   render.NewView(s.contract, state, s.policy),
		Effect: form.EffectNone.String(),
	})
}

// readSubmission collects the posted field values. JSON bodies are objects
// keyed by field name; other bodies are parsed as forms and unknown form keys
// are skipped.
func readSubmission(r *http.Request) (map[form.Field]string, error) {
	values := make(map[form.Field]string)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.New("malformed json body")
		}
		for key, value := range body {
			if key == render.CSRFFieldName {
				continue
			}
			field, err := form.ParseField(key)
			if err != nil {
				return nil, err
			}
			values[field] = value
		}
		return values, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, errors.New("malformed form body")
	}
	for _, field := range form.Fields() {
		if _, ok := r.PostForm[field.String()]; ok {
			values[field] = r.PostForm.Get(field.String())
		}
	}
	return values, nil
}

func readFieldValue(r *http.Request) (string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var body fieldBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return "", errors.New("malformed json body")
		}
		return body.Value, nil
	}
	if err := r.ParseForm(); err != nil {
		return "", errors.New("malformed form body")
	}
	return r.PostForm.Get("value"), nil
}

func (s *Server) checkCSRF(r *http.Request, sess *Session) bool {
	token := r.Header.Get(CSRFHeader)
	if token == "" {
		token = r.PostForm.Get(render.CSRFFieldName)
	}
	return token != "" && token == sess.CSRF
}

// dispatch applies a WebSocket event and builds the reply.
func (s *Server) dispatch(ctx context.Context, sess *Session, ev wsEvent) eventReply {
	var (
		state  form.State
		effect form.Effect
		err    error
	)
	switch ev.Type {
	case "change":
		var field form.Field
		field, err = form.ParseField(ev.Field)
		if err == nil {
			state, err = sess.ctrl.Change(ctx, field, ev.Value)
		}
	case "submit":
		state, effect, err = sess.ctrl.Submit(ctx)
		s.metrics.submissions.WithLabelValues(effect.Kind.String()).Inc()
	case "reset":
		state = sess.ctrl.Reset(ctx)
		effect = form.Effect{Kind: form.EffectReset}
	default:
		err = fmt.Errorf("unknown event type %q", ev.Type)
	}

	if err != nil {
		key := "form"
		if ev.Type == "change" {
			key = ev.Field
		}
		return s.hostError(sess, key, err.Error())
	}
	return s.reply(sess, state, effect)
}

// reply builds the answer to an applied event. Successful submits carry the
// notice and rejected ones list their messages keyed by field.
func (s *Server) reply(sess *Session, state form.State, effect form.Effect) eventReply {
	view := render.NewView(s.contract, state, s.policy)
	out := eventReply{Effect: effect.Kind.String()}
	switch effect.Kind {
	case form.EffectSucceeded:
		sess.takeNotice()
		view = view.WithNotice(effect.Notice)
	case form.EffectRejected:
		out.Errors = render.ErrorPayload(state.Errors)
	}
	out.View = view
	return out
}

// hostError answers a request the form could not apply. msg is attached to
// the view under key; keys naming no field land in the form banner.
func (s *Server) hostError(sess *Session, key, msg string) eventReply {
	errs := map[string][]string{key: {msg}}
	view := render.Prepare(
		render.NewView(s.contract, sess.ctrl.State(), s.policy),
		render.RenderOptions{Errors: errs},
	)
	return eventReply{
		View:   view,
		Effect: form.EffectNone.String(),
		Error:  msg,
		Errors: errs,
	}
}
