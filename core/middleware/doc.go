// Package middleware contains HTTP middleware for the Fiber application.
//
//   - auth: API key validation via the X-API-Key header, with public paths.
//   - rayid: tags every request with a ray id (X-Ray-ID) stored in the fiber
//     locals, so handlers can log it through logger.WithRayID.
package middleware
