package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type ZoneTag struct{}

var ZoneTagComponent = NewComponent[ZoneTag]()

type WallTag struct{}

var WallTagComponent = NewComponent[WallTag]()
