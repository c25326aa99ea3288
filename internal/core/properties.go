package core

import (
	"github.com/bethropolis/mkedit/internal/core/history"
	"github.com/bethropolis/mkedit/internal/macro"
)

// Key property names accepted by EditKeyProperty.
const (
	KeyPropText           = "Text"
	KeyPropArea           = "Area"
	KeyPropShape          = "Shape"
	KeyPropType           = "Type"
	KeyPropColorEdge      = "ColorEdge"
	KeyPropColorFill      = "ColorFill"
	KeyPropColorEdgePress = "ColorEdgePress"
	KeyPropColorFillPress = "ColorFillPress"
	KeyPropKeySeq         = "KeySeq"
)

// Screen property names accepted by EditScreenProperty.
const (
	ScreenPropColor       = "ColorBackground"
	ScreenPropText        = "BackgroundText"
	ScreenPropSwipeType   = "SwipeType"
	ScreenPropOrientation = "Orientation"
)

var keyProperties = history.NewRegistry[*macro.Key]().
	Register(KeyPropText, history.Field(
		func(k *macro.Key) string { return k.Text },
		func(k *macro.Key, v string) { k.Text = v })).
	Register(KeyPropArea, history.Field(
		func(k *macro.Key) macro.Rect { return k.Area },
		func(k *macro.Key, v macro.Rect) { k.Area = v })).
	Register(KeyPropShape, history.Field(
		func(k *macro.Key) macro.ShapeType { return k.Shape },
		func(k *macro.Key, v macro.ShapeType) { k.Shape = v })).
	Register(KeyPropType, history.Field(
		func(k *macro.Key) macro.KeyType { return k.Type },
		func(k *macro.Key, v macro.KeyType) { k.Type = v })).
	Register(KeyPropColorEdge, history.Field(
		func(k *macro.Key) macro.Color { return k.ColorEdge },
		func(k *macro.Key, v macro.Color) { k.ColorEdge = v })).
	Register(KeyPropColorFill, history.Field(
		func(k *macro.Key) macro.Color { return k.ColorFill },
		func(k *macro.Key, v macro.Color) { k.ColorFill = v })).
	Register(KeyPropColorEdgePress, history.Field(
		func(k *macro.Key) macro.Color { return k.ColorEdgePress },
		func(k *macro.Key, v macro.Color) { k.ColorEdgePress = v })).
	Register(KeyPropColorFillPress, history.Field(
		func(k *macro.Key) macro.Color { return k.ColorFillPress },
		func(k *macro.Key, v macro.Color) { k.ColorFillPress = v })).
	Register(KeyPropKeySeq, history.Field(
		func(k *macro.Key) macro.KeySeq { return k.KeySeq },
		func(k *macro.Key, v macro.KeySeq) { k.KeySeq = v }))

var screenProperties = history.NewRegistry[*macro.Screen]().
	Register(ScreenPropColor, history.Field(
		func(s *macro.Screen) macro.Color { return s.Background },
		func(s *macro.Screen, v macro.Color) { s.Background = v })).
	Register(ScreenPropText, history.Field(
		func(s *macro.Screen) string { return s.BackgroundText },
		func(s *macro.Screen, v string) { s.BackgroundText = v })).
	Register(ScreenPropSwipeType, history.Field(
		func(s *macro.Screen) macro.SwipeType { return s.Swipe },
		func(s *macro.Screen, v macro.SwipeType) { s.Swipe = v })).
	Register(ScreenPropOrientation, history.Field(
		func(s *macro.Screen) macro.Orientation { return s.Orientation },
		func(s *macro.Screen, v macro.Orientation) { s.Orientation = v }))

// KeyProperties lists the editable key property names.
func KeyProperties() []string {
	return keyProperties.Names()
}
