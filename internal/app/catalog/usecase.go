package catalog

import (
	"context"

	"lotusadvisor/internal/app/ports"
)

type UseCase struct {
	Provider ports.CatalogProvider
}

type Entry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Risk        string `json:"risk,omitempty"`
	Fundamental bool   `json:"fundamental,omitempty"`
}

type Response struct {
	Lotuses []Entry `json:"lotuses"`
}

func (u UseCase) Execute(ctx context.Context) (Response, error) {
	all, err := u.Provider.All(ctx)
	if err != nil {
		return Response{}, err
	}
	entries := make([]Entry, 0, len(all))
	for _, l := range all {
		entries = append(entries, Entry{
			ID:          l.ID,
			Name:        l.Name,
			Description: l.Description,
			Risk:        l.Risk,
			Fundamental: l.Fundamental,
		})
	}
	return Response{Lotuses: entries}, nil
}
