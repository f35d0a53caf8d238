// Package translate turns parsed spec file entries into runnable
// cobra-backed command artifacts.
package translate
