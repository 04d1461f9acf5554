package proguard

// Directives are the options understood by ProGuard and R8.
var Directives = []string{
	"adaptclassstrings",
	"adaptresourcefilecontents",
	"adaptresourcefilenames",
	"addconfigurationdebugging",
	"allowaccessmodification",
	"alwaysinline",
	"applymapping",
	"assumenoexternalreturnvalues",
	"assumenoexternalsideeffects",
	"assumenoescapingparameters",
	"assumenosideeffects",
	"assumevalues",
	"basedirectory",
	"checkdiscard",
	"classobfuscationdictionary",
	"dontnote",
	"dontobfuscate",
	"dontoptimize",
	"dontpreverify",
	"dontshrink",
	"dontskipnonpubliclibraryclasses",
	"dontusemixedcaseclassnames",
	"dontwarn",
	"dump",
	"flattenpackagehierarchy",
	"forceprocessing",
	"identifiernamestring",
	"if",
	"ignorewarnings",
	"include",
	"injars",
	"keep",
	"keepattributes",
	"keepclasseswithmembernames",
	"keepclasseswithmembers",
	"keepclassmembernames",
	"keepclassmembers",
	"keepdirectories",
	"keepkotlinmetadata",
	"keepnames",
	"keeppackagenames",
	"keepparameternames",
	"libraryjars",
	"maximumremovedandroidloglevel",
	"mergeinterfacesaggressively",
	"neverinline",
	"obfuscationdictionary",
	"optimizationpasses",
	"optimizations",
	"outjars",
	"overloadaggressively",
	"packageobfuscationdictionary",
	"printconfiguration",
	"printmapping",
	"printseeds",
	"printusage",
	"renamesourcefileattribute",
	"repackageclasses",
	"skipnonpubliclibraryclasses",
	"skipnonpubliclibraryclassmembers",
	"target",
	"useuniqueclassmembernames",
	"verbose",
	"whyareyoukeeping",
}
