package i18n

import "context"

type ctxKey struct{}

// ContextWithLocale stores the negotiated locale in the context.
func ContextWithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, ctxKey{}, locale)
}

// LocaleFromContext extracts the locale. Returns DefaultLocale if none is set.
func LocaleFromContext(ctx context.Context) string {
	if l, ok := ctx.Value(ctxKey{}).(string); ok && l != "" {
		return l
	}
	return DefaultLocale
}
