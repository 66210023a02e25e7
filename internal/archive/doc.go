// Package archive bundles an Envault store into a single container file
// and restores it again.
//
// Two container formats are supported: ZIP and gzip-compressed TAR. The
// vault deliberately writes archives under arbitrary, user-chosen names,
// so a file's extension carries no information about its true format.
// Decompress therefore probes the supported formats in order, and when
// the file itself matches neither, retries against sibling paths built
// by substituting the real extensions for the advertised one. This is a
// best-effort recovery strategy, not a guarantee; the probe order lives
// in one table so further formats can be added without touching the
// store.
//
// Extraction always lands in an isolated staging directory first. The
// staged entries are merged into the live store root only after the
// whole archive has been read successfully, and the staging directory
// is removed on every exit path.
package archive
