// Package process terminates headless browser process trees once a PDF
// export session ends.
package process
