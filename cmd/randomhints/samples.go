package main

var sampleApplications = []string{
	"Chat app",
	"Photo sharing app",
	"Task manager",
	"Music player",
	"Recipe book",
	"Fitness tracker",
	"Flashcard app",
	"Travel planner",
}

var sampleTargets = []string{
	"for students",
	"for parents",
	"for pet owners",
	"for remote teams",
	"for gardeners",
	"for retirees",
}

var sampleObjects = []string{
	"using photos",
	"using location",
	"using voice",
	"using a calendar",
	"using QR codes",
}

var sampleActions = []string{
	"that shares",
	"that ranks",
	"that reminds",
	"that recommends",
	"that visualizes",
	"that translates",
}
