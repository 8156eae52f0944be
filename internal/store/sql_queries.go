// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	getServerEntity = `
		SELECT
			entity_type,
			entity_id,
			fields,
			version,
			deleted,
			checksum,
			updated_at
		FROM server_entities
		WHERE user_id = $1 AND entity_type = $2 AND entity_id = $3;`

	upsertServerEntity = `
		INSERT INTO server_entities (
			user_id,
			entity_type,
			entity_id,
			fields,
			version,
			deleted,
			checksum,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, entity_type, entity_id) DO UPDATE SET
			fields     = excluded.fields,
			version    = excluded.version,
			deleted    = excluded.deleted,
			checksum   = excluded.checksum,
			updated_at = excluded.updated_at;`

	appendServerChangeLog = `
		INSERT INTO server_change_log (
			user_id,
			entity_type,
			entity_id,
			operation,
			diff,
			version,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING seq;`

	insertProcessedPush = `
		INSERT INTO processed_pushes (
			user_id,
			item_id,
			outcome,
			server_version,
			processed_at
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, item_id) DO NOTHING;`

	getProcessedPush = `
		SELECT outcome, server_version, processed_at
		FROM processed_pushes
		WHERE user_id = $1 AND item_id = $2;`
)
