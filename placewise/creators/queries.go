package creators

const (
	creatorColumns = `
		c.creator_id::text,
		c.name,
		c.acct_id,
		COALESCE(c.age_range, ''),
		COALESCE(c.gender_skew, ''),
		COALESCE(c.location, ''),
		COALESCE(c.interests, ''),
		COALESCE(c.topic, ''),
		COALESCE(c.conservative_click_estimate, 0)::float8,
		COALESCE((
			SELECT array_agg(k.keywords ORDER BY k.keyword_id)
			FROM creator_keywords ck
			JOIN keywords k ON k.keyword_id = ck.keyword_id
			WHERE ck.creator_id = c.creator_id
		), '{}')
	`

	queryCandidates = `
		SELECT ` + creatorColumns + `
		FROM creators c
		ORDER BY c.creator_id
		LIMIT $1
	`

	queryByAccount = `
		SELECT ` + creatorColumns + `
		FROM creators c
		WHERE c.acct_id = ANY($1)
		ORDER BY c.creator_id
	`

	// per-placement clicks and conversions, split by whether the placement's
	// advertiser matches the context ($2 category, $3 advertiser id) and kept
	// only on the side selected by $4
	queryPerformance = `
		WITH clicks AS (
			SELECT cu.creator_id, pu.insertion_id, SUM(cu.unique_clicks) AS clicks
			FROM click_uniques cu
			JOIN perf_uploads pu ON pu.perf_upload_id = cu.perf_upload_id
			WHERE cu.creator_id::text = ANY($1)
			GROUP BY cu.creator_id, pu.insertion_id
		),
		convs AS (
			SELECT cv.creator_id, cv.insertion_id, SUM(cv.conversions) AS conversions
			FROM conversions cv
			WHERE cv.creator_id::text = ANY($1)
			GROUP BY cv.creator_id, cv.insertion_id
		),
		placements AS (
			SELECT
				COALESCE(cl.creator_id, cv.creator_id) AS creator_id,
				COALESCE(cl.insertion_id, cv.insertion_id) AS insertion_id,
				COALESCE(cl.clicks, 0) AS clicks,
				COALESCE(cv.conversions, 0) AS conversions
			FROM clicks cl
			FULL OUTER JOIN convs cv
				ON cv.creator_id = cl.creator_id AND cv.insertion_id = cl.insertion_id
		),
		scoped AS (
			SELECT p.creator_id, p.clicks, p.conversions
			FROM placements p
			JOIN insertions i ON i.insertion_id = p.insertion_id
			JOIN campaigns cp ON cp.campaign_id = i.campaign_id
			JOIN advertisers a ON a.advertiser_id = cp.advertiser_id
			WHERE (
				CASE
					WHEN $3::text <> '' THEN a.advertiser_id::text = $3::text
					ELSE COALESCE(a.category, '') = $2::text
				END
			) = $4::bool
		)
		SELECT
			creator_id::text,
			SUM(clicks)::bigint,
			SUM(conversions)::bigint,
			COUNT(*)::int,
			COALESCE(percentile_cont(0.5) WITHIN GROUP (ORDER BY clicks), 0)::float8
		FROM scoped
		GROUP BY creator_id
	`

	queryEmbeddings = `
		SELECT creator_id::text, embedding
		FROM creator_vectors
		WHERE creator_id::text = ANY($1)
	`

	queryDeclinedIDs = `
		SELECT creator_id::text
		FROM declined_creators
		WHERE advertiser_id::text = $1
		ORDER BY creator_id
	`

	queryDeclined = `
		SELECT d.creator_id::text, c.name, c.acct_id, d.declined_at, COALESCE(d.reason, '')
		FROM declined_creators d
		JOIN creators c ON c.creator_id = d.creator_id
		WHERE d.advertiser_id::text = $1
		ORDER BY d.declined_at DESC
	`

	queryCostPerClick = `
		SELECT cpc::float8
		FROM insertions
		WHERE insertion_id::text = $1
	`

	// average CVR over every placement the advertiser has run
	queryAdvertiser = `
		WITH history AS (
			SELECT
				COALESCE((
					SELECT SUM(cu.unique_clicks)
					FROM click_uniques cu
					JOIN perf_uploads pu ON pu.perf_upload_id = cu.perf_upload_id
					JOIN insertions i ON i.insertion_id = pu.insertion_id
					JOIN campaigns cp ON cp.campaign_id = i.campaign_id
					WHERE cp.advertiser_id::text = $1
				), 0)::float8 AS clicks,
				COALESCE((
					SELECT SUM(cv.conversions)
					FROM conversions cv
					JOIN insertions i ON i.insertion_id = cv.insertion_id
					JOIN campaigns cp ON cp.campaign_id = i.campaign_id
					WHERE cp.advertiser_id::text = $1
				), 0)::float8 AS conversions
		)
		SELECT
			a.advertiser_id::text,
			a.name,
			COALESCE(a.category, ''),
			COALESCE(a.target_age_range, ''),
			COALESCE(a.target_gender_skew, ''),
			COALESCE(a.target_location, ''),
			COALESCE(a.target_interests, ''),
			CASE WHEN h.clicks > 0 THEN h.conversions / h.clicks ELSE 0 END
		FROM advertisers a, history h
		WHERE a.advertiser_id::text = $1
	`
)
