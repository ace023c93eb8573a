package binder

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

// DefaultMaxFormSize is the default maximum size for url-encoded bodies.
const DefaultMaxFormSize = 1 << 20

const formMediaType = "application/x-www-form-urlencoded"

// Form creates a binder for application/x-www-form-urlencoded bodies.
//
// Fields are matched by the `form` tag, falling back to the `json` tag name
// so one request struct can serve both encodings. `form:"-"` skips a field.
// Supported kinds are string, bool, ints, uints, floats and pointers to them;
// the first value wins when a key repeats. MaxSize applies; Strict has no
// effect.
//
//	type LoginRequest struct {
//		Email    string `json:"email"`
//		Password string `json:"password"`
//	}
//
//	r.Post("/login", handler.Wrap(login,
//		handler.WithBinder[handler.Context, LoginRequest](binder.Form()),
//	))
func Form(opts ...JSONOption) func(r *http.Request, v any) error {
	cfg := jsonConfig{maxSize: DefaultMaxFormSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(r *http.Request, v any) error {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return fmt.Errorf("%w: expected %s", ErrMissingContentType, formMediaType)
		}
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || mediaType != formMediaType {
			return fmt.Errorf("%w: got %s, expected %s", ErrUnsupportedMediaType, contentType, formMediaType)
		}

		if r.Body != nil {
			r.Body = http.MaxBytesReader(nil, r.Body, cfg.maxSize)
		}
		if err := r.ParseForm(); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return fmt.Errorf("%w: max %d bytes", ErrBodyTooLarge, cfg.maxSize)
			}
			return fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}

		return bindValues(v, r.PostForm)
	}
}

func bindValues(v any, values map[string][]string) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a non-nil pointer to a struct", ErrInvalidForm)
	}

	elem := rv.Elem()
	typ := elem.Type()
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		name := fieldName(field)
		if name == "" {
			continue
		}
		vals, ok := values[name]
		if !ok || len(vals) == 0 {
			continue
		}

		if err := setValue(elem.Field(i), vals[0]); err != nil {
			return fmt.Errorf("%w: field %q: %v", ErrInvalidForm, name, err)
		}
	}
	return nil
}

func fieldName(field reflect.StructField) string {
	for _, key := range []string{"form", "json"} {
		tag, ok := field.Tag.Lookup(key)
		if !ok {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return field.Name
}

func setValue(fv reflect.Value, raw string) error {
	if fv.Kind() == reflect.Pointer {
		ptr := reflect.New(fv.Type().Elem())
		if err := setValue(ptr.Elem(), raw); err != nil {
			return err
		}
		fv.Set(ptr)
		return nil
	}

	switch fv.Kind() {
	case reflect.String:
		fv.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetFloat(f)
	default:
		return fmt.Errorf("unsupported kind %s", fv.Kind())
	}
	return nil
}

// Body binds url-encoded forms with Form and everything else with JSON.
func Body(opts ...JSONOption) func(r *http.Request, v any) error {
	form, json := Form(opts...), JSON(opts...)
	return func(r *http.Request, v any) error {
		if mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil && mediaType == formMediaType {
			return form(r, v)
		}
		return json(r, v)
	}
}
