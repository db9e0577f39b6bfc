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
	"errors"
	"time"

	"app/core/profile/domain"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stephenafamo/bob"
)

// profileColumns is the RETURNING / SELECT column list shared by queries.
var profileColumns = []string{
	"id", "name", "email", "bio", "avatar_url",
	"phone", "location", "website", "created_at", "updated_at",
}

type (
	// ProfileRow is the persistence entity shape used by storage adapters.
	ProfileRow struct {
		ID        uuid.UUID      `db:"id"`
		Name      string         `db:"name"`
		Email     string         `db:"email"`
		Bio       sql.NullString `db:"bio"`
		AvatarURL sql.NullString `db:"avatar_url"`
		Phone     sql.NullString `db:"phone"`
		Location  sql.NullString `db:"location"`
		Website   sql.NullString `db:"website"`
		CreatedAt time.Time      `db:"created_at"`
		UpdatedAt time.Time      `db:"updated_at"`
	}
)

// toProfile converts a ProfileRow to a domain Profile.
func toProfile(row ProfileRow) domain.Profile {
	return domain.Profile{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		Bio:       nullToPtr(row.Bio),
		AvatarURL: nullToPtr(row.AvatarURL),
		Phone:     nullToPtr(row.Phone),
		Location:  nullToPtr(row.Location),
		Website:   nullToPtr(row.Website),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

// profileTransformer implements bob's transformer interface for automatic
// row to domain conversion.
type profileTransformer struct{}

func (profileTransformer) TransformScanned(rows []ProfileRow) ([]domain.Profile, error) {
	out := make([]domain.Profile, len(rows))
	for i, r := range rows {
		out[i] = toProfile(r)
	}
	return out, nil
}

func nullToPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func ptrToNull(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

// wrapProfileError centralizes mapping of DB errors to domain errors.
func wrapProfileError(err error) error {
	if err == nil {
		return nil
	}

	// sql.ErrNoRows is expected in many flows (not found)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" { // unique_violation
			return domain.ErrDuplicateEmail
		}
	}

	return err
}

// inTxQueryStmt rebinds a QueryStmt to a transaction.
func inTxQueryStmt[Arg any, T any, Ts ~[]T](
	ctx context.Context,
	stmt bob.QueryStmt[Arg, T, Ts],
	tx bob.Tx,
) bob.QueryStmt[Arg, T, Ts] {
	txStmt := stmt
	txStmt.Stmt = bob.InTx(ctx, stmt.Stmt, tx)
	return txStmt
}
