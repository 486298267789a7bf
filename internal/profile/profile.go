// Package profile resolves opaque client/vendor identifiers into minimal
// display projections. The inquiry core stores only the identifiers; names
// and contact addresses are owned by the external profile service.
package profile

import "context"

type Profile struct {
	ID    string
	Name  string
	Email string
}

type Resolver interface {
	Resolve(ctx context.Context, id string) (Profile, error)
}

// StaticResolver serves fixed profiles, for tests and deployments without an
// external profile service. Unknown ids resolve to an id-only projection.
type StaticResolver struct {
	profiles map[string]Profile
}

func NewStaticResolver(profiles map[string]Profile) *StaticResolver {
	return &StaticResolver{profiles: profiles}
}

func (r *StaticResolver) Resolve(_ context.Context, id string) (Profile, error) {
	if p, ok := r.profiles[id]; ok {
		p.ID = id
		return p, nil
	}
	return Profile{ID: id}, nil
}
