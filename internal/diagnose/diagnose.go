// SPDX-License-Identifier: MPL-2.0

package diagnose

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	MetadataNotFoundId Id = iota + 1
	VersionNotFoundId
	VersionMalformedId
	ContainerEngineNotFoundId
	ImageBuildFailedId
	ImagePublishFailedId
	ConfigLoadFailedId
	CredentialsMissingId
	ObservationFetchFailedId
	MetricWriteFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // links into the documentation
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	metadataNotFoundIssue = &Issue{
		id: MetadataNotFoundId,
		mdMsg: `
# No metadata file found!

We searched for the project metadata file but couldn't find one.

## Search locations:
1. The path given with --metadata
2. frost.toml in the current directory

## Things you can try:
- Run frost from the project root directory
- Create a minimal metadata file:
~~~toml
version = "0.1.0"
~~~

- Or point at an existing one:
~~~
$ frost build --metadata path/to/frost.toml
~~~`,
	}

	versionNotFoundIssue = &Issue{
		id: VersionNotFoundId,
		mdMsg: `
# No version in metadata!

The metadata file has no line assigning a value to 'version'.

## Expected format:
~~~toml
version = "1.4.0"
~~~

## Things you can try:
- Add a version line to frost.toml
- Check for typos in the key name ('version', lowercase)
- Verify you are pointing at the right file:
~~~
$ frost build --metadata path/to/frost.toml
~~~`,
	}

	versionMalformedIssue = &Issue{
		id: VersionMalformedId,
		mdMsg: `
# Malformed version line!

A 'version' line was found but its value is not a quoted string.

## Expected format:
~~~toml
version = "1.4.0"
~~~

## Common mistakes:
- Missing quotes: version = 1.4.0
- Empty value: version = ""
- Single quotes instead of double quotes

## Things you can try:
- Quote the value with double quotes
- Make sure the quoted value is not empty`,
	}

	containerEngineNotFoundIssue = &Issue{
		id: ContainerEngineNotFoundId,
		mdMsg: `
# Container engine not found!

Building and publishing release images needs a container engine, but none is available.

## Supported container engines:
- **Docker**
- **Podman**

## Things you can try:
- Install Docker:
  - https://docs.docker.com/get-docker/

- Install Podman:
  - Linux: ` + "`sudo apt install podman`" + ` or ` + "`sudo dnf install podman`" + `
  - macOS: ` + "`brew install podman`" + `
  - Windows: Download from https://podman.io

- Configure your preferred engine in ~/.config/frost/config.toml:
~~~toml
container_engine = "docker"  # or "podman"
~~~`,
	}

	imageBuildFailedIssue = &Issue{
		id: ImageBuildFailedId,
		mdMsg: `
# Image build failed!

The container toolchain exited with an error while building the release image.

## Common causes:
- Syntax error in the Dockerfile
- A build step failed (missing dependency, failing compile)
- Base image could not be pulled

## Things you can try:
- Read the toolchain output above; the exit code is passed through unchanged
- Build manually to iterate faster:
~~~
$ docker build -t barskern/frost:dev .
~~~

- Check network access to the registry hosting the base image`,
	}

	imagePublishFailedIssue = &Issue{
		id: ImagePublishFailedId,
		mdMsg: `
# Image publish failed!

The container toolchain exited with an error while pushing the release image.

## Common causes:
- Not logged in to the registry
- Insufficient permissions on the repository
- The image was never built (run 'frost build' first)
- Transient network or registry failure

## Things you can try:
- Log in and retry:
~~~
$ docker login
$ frost deploy
~~~

- Verify the image exists locally:
~~~
$ docker image inspect barskern/frost:<version>
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the frost configuration file.

## Configuration file locations:
- Linux: ~/.config/frost/config.toml
- macOS: ~/Library/Application Support/frost/config.toml
- Windows: %APPDATA%\frost\config.toml
- Project overlay: ./frost.toml

## Things you can try:
- Create a default configuration:
~~~
$ frost config init
~~~

- Check the TOML syntax
- Remove the config file to use defaults

## Example configuration:
~~~toml
container_engine = "docker"

[metno]
sensor_id = "SN19780"

[ui]
color_scheme = "auto"
verbose = false
~~~`,
	}

	credentialsMissingIssue = &Issue{
		id: CredentialsMissingId,
		mdMsg: `
# API credentials missing!

Requests to the MET Norway observation API need a client ID and secret.

## Things you can try:
- Register for free credentials at frost.met.no
- Export them before running:
~~~
$ export CLIENT_ID=...
$ export CLIENT_SECRET=...
~~~

- Or put them in a .env file in the directory you run frost from
- Or set metno.client_id / metno.client_secret in the config file`,
		docLinks: []HttpLink{"https://frost.met.no/auth/requestCredentials.html"},
	}

	observationFetchFailedIssue = &Issue{
		id: ObservationFetchFailedId,
		mdMsg: `
# Observation fetch failed!

The MET Norway API rejected or failed a request.

## Common causes:
- Invalid or expired credentials (401/403)
- Unknown sensor or element id
- Rate limiting (429)
- API outage (5xx)

## Things you can try:
- Run with verbose mode to see the failing request:
~~~
$ frost --verbose sync
~~~

- List what the sensor actually reports:
~~~
$ frost elements
~~~

- Check the sensor id in your configuration`,
		extLinks: []HttpLink{"https://status.met.no"},
	}

	metricWriteFailedIssue = &Issue{
		id: MetricWriteFailedId,
		mdMsg: `
# Metric store write failed!

Samples could not be written to the Promscale endpoint.

## Common causes:
- The endpoint is unreachable (network, VPN, DNS)
- TLS verification failed against the configured certificate
- The store rejected the payload (5xx)

## Things you can try:
- Check connectivity to the write endpoint
- Point promscale.cert_path at the CA bundle the server uses
- Run with verbose mode for the full error chain:
~~~
$ frost --verbose sync
~~~`,
	}

	issues = map[Id]*Issue{
		metadataNotFoundIssue.Id():        metadataNotFoundIssue,
		versionNotFoundIssue.Id():         versionNotFoundIssue,
		versionMalformedIssue.Id():        versionMalformedIssue,
		containerEngineNotFoundIssue.Id(): containerEngineNotFoundIssue,
		imageBuildFailedIssue.Id():        imageBuildFailedIssue,
		imagePublishFailedIssue.Id():      imagePublishFailedIssue,
		configLoadFailedIssue.Id():        configLoadFailedIssue,
		credentialsMissingIssue.Id():      credentialsMissingIssue,
		observationFetchFailedIssue.Id():  observationFetchFailedIssue,
		metricWriteFailedIssue.Id():       metricWriteFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
