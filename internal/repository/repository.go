package repository

import (
	"context"

	"github.com/shopcore/shopcore/pkg/database"
)

// Repositories holds all entity repositories bound to one Querier, which
// is either the database itself or a single transaction.
type Repositories struct {
	sqlite *database.SQLite

	Users             *UserRepo
	Sessions          *SessionRepo
	Products          *ProductRepo
	Carts             *CartRepo
	Orders            *OrderRepo
	Cards             *CardRepo
	Reviews           *ReviewRepo
	UnsubscribeTokens *UnsubscribeTokenRepo
}

// NewRepositories creates all repositories bound directly to the database.
func NewRepositories(db *database.SQLite) *Repositories {
	return bind(db, db.DB)
}

func bind(db *database.SQLite, q database.Querier) *Repositories {
	return &Repositories{
		sqlite:            db,
		Users:             &UserRepo{q: q},
		Sessions:          &SessionRepo{q: q},
		Products:          &ProductRepo{q: q},
		Carts:             &CartRepo{q: q},
		Orders:            &OrderRepo{q: q},
		Cards:             &CardRepo{q: q},
		Reviews:           &ReviewRepo{q: q},
		UnsubscribeTokens: &UnsubscribeTokenRepo{q: q},
	}
}

// WithTx runs fn with every repository bound to a single transaction.
// fn's error rolls the transaction back; nil commits it.
func (r *Repositories) WithTx(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.sqlite.WithTx(ctx, func(q database.Querier) error {
		return fn(bind(r.sqlite, q))
	})
}
