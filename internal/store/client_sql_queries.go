// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	getEntity = `
		SELECT
			entity_type,
			entity_id,
			fields,
			version,
			server_version,
			deleted,
			checksum,
			updated_at
		FROM entities
		WHERE entity_type = $1 AND entity_id = $2;`

	getEntitiesByType = `
		SELECT
			entity_type,
			entity_id,
			fields,
			version,
			server_version,
			deleted,
			checksum,
			updated_at
		FROM entities
		WHERE entity_type = $1 AND deleted = 0;`

	upsertEntity = `
		INSERT INTO entities (
			entity_type,
			entity_id,
			fields,
			version,
			server_version,
			deleted,
			checksum,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (entity_type, entity_id) DO UPDATE SET
			fields         = excluded.fields,
			version        = excluded.version,
			server_version = excluded.server_version,
			deleted        = excluded.deleted,
			checksum       = excluded.checksum,
			updated_at     = excluded.updated_at;`

	setEntityServerVersion = `
		UPDATE entities SET server_version = $1
		WHERE entity_type = $2 AND entity_id = $3;`

	purgeEntity = `
		DELETE FROM entities
		WHERE entity_type = $1 AND entity_id = $2;`

	appendChangeLog = `
		INSERT INTO change_log (
			entity_type,
			entity_id,
			operation,
			diff,
			version,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6);`

	getChangesSince = `
		SELECT seq, entity_type, entity_id, operation, diff, version, created_at
		FROM change_log
		WHERE seq > $1
		ORDER BY seq ASC;`

	compactChangeLog = `
		DELETE FROM change_log WHERE seq <= $1;`

	upsertSyncItem = `
		INSERT INTO sync_items (
			id, entity_type, entity_id, operation,
			local_data, server_data, local_ts, server_ts,
			status, priority, retry_count, max_retries,
			base_version, diff, seq
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			operation    = excluded.operation,
			local_data   = excluded.local_data,
			server_data  = excluded.server_data,
			local_ts     = excluded.local_ts,
			server_ts    = excluded.server_ts,
			status       = excluded.status,
			priority     = excluded.priority,
			retry_count  = excluded.retry_count,
			max_retries  = excluded.max_retries,
			base_version = excluded.base_version,
			diff         = excluded.diff,
			seq          = excluded.seq;`

	getSyncItem = `
		SELECT id, entity_type, entity_id, operation,
			local_data, server_data, local_ts, server_ts,
			status, priority, retry_count, max_retries,
			base_version, diff, seq
		FROM sync_items
		WHERE id = $1;`

	getPendingSyncItemForEntity = `
		SELECT id, entity_type, entity_id, operation,
			local_data, server_data, local_ts, server_ts,
			status, priority, retry_count, max_retries,
			base_version, diff, seq
		FROM sync_items
		WHERE entity_type = $1 AND entity_id = $2 AND status = 'pending';`

	getSyncItemsByStatus = `
		SELECT id, entity_type, entity_id, operation,
			local_data, server_data, local_ts, server_ts,
			status, priority, retry_count, max_retries,
			base_version, diff, seq
		FROM sync_items
		WHERE status = $1
		ORDER BY priority DESC, seq ASC;`

	setSyncItemStatus = `
		UPDATE sync_items SET status = $1 WHERE id = $2;`

	recoverInFlightSyncItems = `
		UPDATE sync_items SET status = 'pending' WHERE status = 'syncing';`

	setSyncItemRetry = `
		UPDATE sync_items SET retry_count = $1, status = $2 WHERE id = $3;`

	pruneCompletedSyncItems = `
		DELETE FROM sync_items WHERE status = 'completed' AND local_ts < $1;`

	upsertConflict = `
		INSERT INTO conflicts (
			id, sync_item_id, entity_type, entity_id,
			local_data, remote_data, strategy,
			resolved, resolution, detected_at, resolved_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			strategy    = excluded.strategy,
			resolved    = excluded.resolved,
			resolution  = excluded.resolution,
			resolved_at = excluded.resolved_at;`

	getConflict = `
		SELECT id, sync_item_id, entity_type, entity_id,
			local_data, remote_data, strategy,
			resolved, resolution, detected_at, resolved_at
		FROM conflicts
		WHERE id = $1;`

	getConflictBySyncItem = `
		SELECT id, sync_item_id, entity_type, entity_id,
			local_data, remote_data, strategy,
			resolved, resolution, detected_at, resolved_at
		FROM conflicts
		WHERE sync_item_id = $1 AND resolved = 0;`

	getOpenConflicts = `
		SELECT id, sync_item_id, entity_type, entity_id,
			local_data, remote_data, strategy,
			resolved, resolution, detected_at, resolved_at
		FROM conflicts
		WHERE resolved = 0
		ORDER BY detected_at ASC;`

	resolveConflict = `
		UPDATE conflicts
		SET resolved = 1, resolution = $1, strategy = $2, resolved_at = $3
		WHERE id = $4;`

	upsertJob = `
		INSERT INTO jobs (
			id, type, params, constraints, priority,
			max_retries, retry_count, retry_backoff,
			scheduled_for, repeat_interval, state
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			params          = excluded.params,
			constraints     = excluded.constraints,
			priority        = excluded.priority,
			max_retries     = excluded.max_retries,
			retry_count     = excluded.retry_count,
			retry_backoff   = excluded.retry_backoff,
			scheduled_for   = excluded.scheduled_for,
			repeat_interval = excluded.repeat_interval,
			state           = excluded.state;`

	deleteJob = `
		DELETE FROM jobs WHERE id = $1;`

	getActiveJobs = `
		SELECT id, type, params, constraints, priority,
			max_retries, retry_count, retry_backoff,
			scheduled_for, repeat_interval, state
		FROM jobs
		WHERE state IN ('scheduled', 'running')
		ORDER BY scheduled_for ASC;`

	getSyncStateValue = `
		SELECT value FROM sync_state WHERE key = $1;`

	setSyncStateValue = `
		INSERT INTO sync_state (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value;`
)
