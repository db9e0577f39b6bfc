// Copyright 2025 Nhat-Nguyen Nguyen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pg

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"app/core/profile/domain"
	"app/modules/db"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

var _ domain.ProfileWriteStore = (*PostgresProfileWriter)(nil)

type (
	PostgresProfileWriter struct {
		table string
		db    *bob.DB // for prepared statements on primary
		txm   db.TxManager

		insertStmt bob.QueryStmt[insertProfileArgs, ProfileRow, []ProfileRow]
		updateStmt bob.QueryStmt[updateProfileArgs, ProfileRow, []ProfileRow]
		deleteStmt bob.QueryStmt[deleteProfileArgs, uuid.UUID, []uuid.UUID]
	}

	// Arg types for write operations
	insertProfileArgs struct {
		ID        uuid.UUID      `db:"id"`
		Name      string         `db:"name"`
		Email     string         `db:"email"`
		Bio       sql.NullString `db:"bio"`
		AvatarURL sql.NullString `db:"avatar_url"`
		Phone     sql.NullString `db:"phone"`
		Location  sql.NullString `db:"location"`
		Website   sql.NullString `db:"website"`
	}

	updateProfileArgs struct {
		ID        uuid.UUID      `db:"id"`
		Name      string         `db:"name"`
		Email     string         `db:"email"`
		Bio       sql.NullString `db:"bio"`
		AvatarURL sql.NullString `db:"avatar_url"`
		Phone     sql.NullString `db:"phone"`
		Location  sql.NullString `db:"location"`
		Website   sql.NullString `db:"website"`
	}

	deleteProfileArgs struct {
		ID uuid.UUID `db:"id"`
	}
)

// NewPostgresProfileWriter creates a new writer with prepared statements bound to the primary.
func NewPostgresProfileWriter(ctx context.Context, pool db.ConnectionPool, table string) (*PostgresProfileWriter, error) {
	primary := pool.Writer().(bob.DB)

	w := &PostgresProfileWriter{
		table: table,
		db:    &primary,
		txm:   pool,
	}

	// INSERT INTO ... RETURNING ...
	insertQuery := psql.Insert(
		im.Into(table, "id", "name", "email", "bio", "avatar_url", "phone", "location", "website"),
		im.Values(
			bob.Named("id"),
			bob.Named("name"),
			bob.Named("email"),
			bob.Named("bio"),
			bob.Named("avatar_url"),
			bob.Named("phone"),
			bob.Named("location"),
			bob.Named("website"),
		),
		im.Returning("id", "name", "email", "bio", "avatar_url", "phone", "location", "website", "created_at", "updated_at"),
	)

	insertStmt, err := bob.PrepareQuery[insertProfileArgs](ctx, primary, insertQuery, scan.StructMapper[ProfileRow]())
	if err != nil {
		return nil, fmt.Errorf("prepare insert profile: %w", err)
	}
	w.insertStmt = insertStmt

	// UPDATE ... SET all mutable columns, refresh updated_at
	updateQuery := psql.Update(
		um.Table(table),
		um.SetCol("name").To(bob.Named("name")),
		um.SetCol("email").To(bob.Named("email")),
		um.SetCol("bio").To(bob.Named("bio")),
		um.SetCol("avatar_url").To(bob.Named("avatar_url")),
		um.SetCol("phone").To(bob.Named("phone")),
		um.SetCol("location").To(bob.Named("location")),
		um.SetCol("website").To(bob.Named("website")),
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(bob.Named("id"))),
		um.Returning("id", "name", "email", "bio", "avatar_url", "phone", "location", "website", "created_at", "updated_at"),
	)

	updateStmt, err := bob.PrepareQuery[updateProfileArgs](ctx, primary, updateQuery, scan.StructMapper[ProfileRow]())
	if err != nil {
		return nil, fmt.Errorf("prepare update profile: %w", err)
	}
	w.updateStmt = updateStmt

	// Hard delete, RETURNING id so the caller learns whether a row existed
	deleteQuery := psql.Delete(
		dm.From(table),
		dm.Where(psql.Quote("id").EQ(bob.Named("id"))),
		dm.Returning("id"),
	)

	deleteStmt, err := bob.PrepareQuery[deleteProfileArgs](ctx, primary, deleteQuery, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("prepare delete profile: %w", err)
	}
	w.deleteStmt = deleteStmt

	return w, nil
}

func insertArgs(params *domain.CreateProfileParams) (insertProfileArgs, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return insertProfileArgs{}, fmt.Errorf("generate profile id: %w", err)
	}
	return insertProfileArgs{
		ID:        id,
		Name:      params.Name,
		Email:     params.Email,
		Bio:       ptrToNull(params.Bio),
		AvatarURL: ptrToNull(params.AvatarURL),
		Phone:     ptrToNull(params.Phone),
		Location:  ptrToNull(params.Location),
		Website:   ptrToNull(params.Website),
	}, nil
}

func updateArgs(p *domain.Profile) updateProfileArgs {
	return updateProfileArgs{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Bio:       ptrToNull(p.Bio),
		AvatarURL: ptrToNull(p.AvatarURL),
		Phone:     ptrToNull(p.Phone),
		Location:  ptrToNull(p.Location),
		Website:   ptrToNull(p.Website),
	}
}

// InsertProfile implements ProfileWriteStore (non-transactional).
func (w *PostgresProfileWriter) InsertProfile(ctx context.Context, params *domain.CreateProfileParams) (*domain.Profile, error) {
	args, err := insertArgs(params)
	if err != nil {
		return nil, err
	}
	row, err := w.insertStmt.One(ctx, args)
	if err != nil {
		return nil, wrapProfileError(err)
	}
	p := toProfile(row)
	return &p, nil
}

// UpdateProfile implements ProfileWriteStore (non-transactional).
func (w *PostgresProfileWriter) UpdateProfile(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	row, err := w.updateStmt.One(ctx, updateArgs(p))
	if err != nil {
		return nil, wrapProfileError(err)
	}
	updated := toProfile(row)
	return &updated, nil
}

// DeleteProfileByID implements ProfileWriteStore (non-transactional).
func (w *PostgresProfileWriter) DeleteProfileByID(ctx context.Context, id uuid.UUID) (bool, error) {
	ids, err := w.deleteStmt.All(ctx, deleteProfileArgs{ID: id})
	if err != nil {
		return false, wrapProfileError(err)
	}
	return len(ids) > 0, nil
}

// WithTx implements ProfileWriteStore transaction support.
func (w *PostgresProfileWriter) WithTx(
	ctx context.Context,
	fn func(ctx context.Context, tx domain.ProfileWriteTx) error,
) error {
	return w.txm.WithTx(ctx, func(ctx context.Context, q db.Querier) error {
		tx, ok := q.(bob.Tx)
		if !ok {
			return fmt.Errorf("querier is not a transaction")
		}

		txRepo := &profileWriterTx{
			parent: w,
			tx:     tx,
		}
		return fn(ctx, txRepo)
	})
}

// WithTimeoutTx implements ProfileWriteStore transaction support with timeout.
func (w *PostgresProfileWriter) WithTimeoutTx(
	ctx context.Context,
	timeout time.Duration,
	fn func(ctx context.Context, tx domain.ProfileWriteTx) error,
) error {
	return w.txm.WithTimeoutTx(ctx, timeout, func(ctx context.Context, q db.Querier) error {
		tx, ok := q.(bob.Tx)
		if !ok {
			return fmt.Errorf("querier is not a transaction")
		}

		txRepo := &profileWriterTx{
			parent: w,
			tx:     tx,
		}
		return fn(ctx, txRepo)
	})
}

// profileWriterTx is a transaction-scoped writer that reuses prepared statements.
type profileWriterTx struct {
	parent *PostgresProfileWriter
	tx     bob.Tx
}

var _ domain.ProfileWriteTx = (*profileWriterTx)(nil)

func (t *profileWriterTx) InsertProfile(ctx context.Context, params *domain.CreateProfileParams) (*domain.Profile, error) {
	args, err := insertArgs(params)
	if err != nil {
		return nil, err
	}
	stmt := inTxQueryStmt(ctx, t.parent.insertStmt, t.tx)

	row, err := stmt.One(ctx, args)
	if err != nil {
		return nil, wrapProfileError(err)
	}

	p := toProfile(row)
	return &p, nil
}

func (t *profileWriterTx) UpdateProfile(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	stmt := inTxQueryStmt(ctx, t.parent.updateStmt, t.tx)

	row, err := stmt.One(ctx, updateArgs(p))
	if err != nil {
		return nil, wrapProfileError(err)
	}
	updated := toProfile(row)
	return &updated, nil
}

func (t *profileWriterTx) DeleteProfileByID(ctx context.Context, id uuid.UUID) (bool, error) {
	stmt := inTxQueryStmt(ctx, t.parent.deleteStmt, t.tx)

	ids, err := stmt.All(ctx, deleteProfileArgs{ID: id})
	if err != nil {
		return false, wrapProfileError(err)
	}
	return len(ids) > 0, nil
}
