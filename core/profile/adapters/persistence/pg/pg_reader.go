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
	"fmt"
	"log/slog"

	"app/core/profile/domain"
	"app/modules/db"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var _ domain.ProfileReadStore = (*PostgresProfileReader)(nil)

type (
	PostgresProfileReader struct {
		table string
		pool  db.ReaderConnectionManager // calls Reader() at runtime
	}
)

// NewPostgresProfileReader creates a new reader that calls Reader() at runtime for load balancing.
//
// This approach uses dynamic queries instead of prepared statements for reads.
// Trade-offs:
//   - Supports runtime replica selection (load balancing across multiple replicas)
//   - Automatic failover if a replica goes down
//   - Simple implementation
//   - Slightly slower than prepared statements (but read queries are typically fast)
func NewPostgresProfileReader(pool db.ReaderConnectionManager, table string) *PostgresProfileReader {
	return &PostgresProfileReader{
		table: table,
		pool:  pool,
	}
}

// GetAllProfiles implements ProfileReadStore. Profiles come back ordered by
// (created_at, id) ascending so callers can page over a stable sequence.
func (r *PostgresProfileReader) GetAllProfiles(ctx context.Context) ([]domain.Profile, error) {
	query := psql.Select(
		sm.Columns("id", "name", "email", "bio", "avatar_url", "phone", "location", "website", "created_at", "updated_at"),
		sm.From(r.table),
		sm.OrderBy("created_at").Asc(),
		sm.OrderBy("id").Asc(),
	)

	profiles, err := bob.Allx[profileTransformer](ctx, r.pool.Reader(), query, scan.StructMapper[ProfileRow]())
	if err != nil {
		slog.ErrorContext(ctx, "GetAllProfiles query error", slog.Any("err", err))
		return nil, wrapProfileError(err)
	}
	return profiles, nil
}

func (r *PostgresProfileReader) GetProfileByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	query := psql.Select(
		sm.Columns("id", "name", "email", "bio", "avatar_url", "phone", "location", "website", "created_at", "updated_at"),
		sm.From(r.table),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	row, err := bob.One(ctx, r.pool.Reader(), query, scan.StructMapper[ProfileRow]())
	if err != nil {
		return nil, wrapProfileError(err)
	}
	prof := toProfile(row)
	return &prof, nil
}

// ExistsByEmail implements ProfileReadStore. The comparison runs against
// lower(email) so it matches the unique index backing create/update checks.
func (r *PostgresProfileReader) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	raw := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE lower(email) = lower($1))`, r.table)

	q := psql.RawQuery(raw, email)
	exists, err := bob.One(ctx, r.pool.Reader(), q, scan.SingleColumnMapper[bool])
	if err != nil {
		slog.ErrorContext(ctx, "ExistsByEmail query error", slog.Any("err", err))
		return false, wrapProfileError(err)
	}
	return exists, nil
}
