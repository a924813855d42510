// Package timeline formats subtitle offsets and segments a movie into
// fixed-size chapters.
package timeline
