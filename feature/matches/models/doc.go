// Package models defines the persisted match history entities and the error
// taxonomy shared by the remote adapter, the store and the synchronizer.
//
// A Match owns its roster of Participations through a one-directional foreign
// key (Participation.MatchID). The pair (MatchID, PlayerID) is unique.
package models
