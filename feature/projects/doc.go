// Package projects implements the /api/projects route group.
//
// Projects belong to the user who created them. Owners and admins may read,
// update, change the status of and delete a project; listing returns the
// caller's projects, or every project for admins.
//
// Attachments are stored in the configured object store under
// projects/<projectId>/<attachmentId>/<file name>, with one database row per
// file. When storage is disabled the attachment routes answer 503.
package projects
