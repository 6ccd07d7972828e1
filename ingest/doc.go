// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ingest turns uploaded files into the typed records calc works on.

# Vote CSV

ParseVoteCSV reads the results CSV published by the electoral authority.
Required columns:

	votos_tipo, votos_cantidad, agrupacion_id, agrupacion_nombre

Optional columns tipo_escala_territorial and nombre_escala_territorial
feed the territorial context used by seat resolution. Vote type labels
map to codes:

	POSITIVO=0 IMPUGNADO=1 RECURRIDO=2 COMANDO=3 EN BLANCO=5 NULO=6

Counts are parsed as decimals and truncated; bad or negative counts
become 0. Empty or placeholder group ids ("undefined", "null") become "0".

# Seat Catalog

ParseSeatCatalog reads one JSON object per line:

	{"nombre_cargo": "DIPUTADOS NACIONALES", "category": "nacional",
	 "tipo_escala_territorial": "provincia", "nombre_escala_territorial": "Buenos Aires",
	 "seats": 35}

cantidad_cargos is accepted in place of seats. A line without a count
stands for one seat. Malformed lines are skipped, never fatal.
*/
package ingest
