// Package archive keeps the raw remote JSON of every newly stored match in
// object storage under matches/{region}/{match_id}.json.
package archive
