// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the
Fitnest API.

# Catalog Types

Rows from the yoga and meditation tables, reshaped for JSON:

  - Pose: A yoga pose; DifficultyLevel is set only by level queries
  - Category: A yoga category with its poses flattened from the join table
  - Difficulty, TransitivePose: Seed shapes for the lookup and join tables
  - MeditationCategory: A meditation category with nested practices
  - MeditationPractice: A practice; media URLs never reach JSON
  - Mood: A mood with the ids of recommended practices

Nullable text columns are *string so they encode as JSON null.

# IntList

IntList stores an id list as a JSON array in a text column. It implements
sql.Scanner and driver.Valuer so both SQLite and PostgreSQL can hold it
without array types.

# Envelope

Meditation and mood responses wrap their data with catalog metadata:

	{"metadata": {"version": "1.0.0", ...}, "data": [...]}

# Error Response

All errors return:

	{
	  "error": "Bad Request",
	  "message": "height must be greater than zero"
	}
*/
package models
