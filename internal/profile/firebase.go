package profile

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
)

// FirebaseResolver looks up display name and email from Firebase user
// records. Lookups that fail degrade to an id-only projection rather than
// failing the listing that asked for them.
type FirebaseResolver struct {
	authClient *auth.Client
}

func NewFirebaseResolver(ctx context.Context, projectID string) (*FirebaseResolver, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return &FirebaseResolver{authClient: client}, nil
}

func (r *FirebaseResolver) Resolve(ctx context.Context, id string) (Profile, error) {
	user, err := r.authClient.GetUser(ctx, id)
	if err != nil {
		return Profile{ID: id}, nil
	}
	return Profile{
		ID:    id,
		Name:  user.DisplayName,
		Email: user.Email,
	}, nil
}
