// Package stage is the scene graph lectures are built on.
//
// A [Stage] holds the drawables currently visible, in paint order. Scenes
// construct [Drawable] values with the pure constructors ([NewText],
// [NewTex], [NewCircle], ...), place them with the layout helpers
// ([Arrange], [NextTo], [ToCorner], [ToEdge]) and change the stage only
// through [Stage.Play], [Stage.Hold], [Stage.Wait] and [Stage.Clear].
//
// Every change is published as an immutable [Transition]. A single [Player]
// presents transitions and may block (the terminal presenter animates them
// in real time); any number of [Observer] values record them (SVG export,
// run recording).
//
// # Morphs
//
// [Transform] keeps the identity of the displayed drawable: the target's
// content and geometry are copied into it and its ID is unchanged, so
// nothing accumulates on stage across a chain of morphs.
package stage
