package actions

// Cache key tag bytes, one per action class (spec §3: "tags are distinct
// per action class and fixed across releases"). Values are stable once
// assigned — changing one invalidates every existing cache entry of that
// class.
const (
	TagFetchRemote byte = iota + 1
	TagFindNode
	TagExportImage
	TagDownloadImg
	TagTransformWebp
	TagTransformScale
	TagTransformRenderSVG
	TagTransformSvgToCompose
	TagTransformSvgToDrawable
	TagGetKotlinPackage
	TagMaterializeFingerprint
)
