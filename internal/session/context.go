package session

import "context"

type idKey struct{}

// WithID tags ctx with the session id so the upstream 401 interceptor can
// tear the right session down.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, idKey{}, id)
}

func IDFrom(ctx context.Context) string {
	id, _ := ctx.Value(idKey{}).(string)
	return id
}
