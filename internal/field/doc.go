// Package field draws vector-field frames.
//
// A frame is a set of arrows from each point to point+vector, scaled into
// the drawing surface by a [Mapper] built from the frame's points. Front
// ends implement [Surface]; [Player] and [Clock] drive autoplay.
package field
