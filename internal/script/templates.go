package script

// Template is a ready-made argument string offered for a kind of script.
type Template struct {
	Label     string
	Arguments string
}

var templates = map[Kind][]Template{
	Python: {
		{"Data analysis (pandas)", "--input data.csv --summary report.json"},
		{"Web scraping", "--url https://example.com --depth 2 --export output.json"},
		{"Automation task", "--config settings.yaml --dry-run"},
	},
	Bash: {
		{"Server log tail", "tail -f /var/log/syslog"},
		{"Deployment", "./deploy.sh --stage staging --confirm"},
	},
	PowerShell: {
		{"List services", "Get-Service | Sort-Object Status"},
		{"Scheduled task", "Register-ScheduledTask -TaskName MyJob -Xml task.xml"},
	},
	NodeJS: {
		{"Express dev server", "npm run dev"},
		{"Build project", "npm run build"},
	},
}

// Templates returns the argument templates for kind. Unknown has none.
func Templates(kind Kind) []Template {
	return append([]Template(nil), templates[kind]...)
}
