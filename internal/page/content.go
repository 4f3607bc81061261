package page

import "html/template"

// content is the static text of a level: its title, the clue revealed once it
// passes, and the hint offered while it fails.
type content struct {
	Title string
	Clue  template.HTML
	Hint  template.HTML
}

//nolint: gochecknoglobals, lll
var levels = [...]content{
	{
		Title: "Level 1: Broken Webserver",
		Clue:  `🧩 Clue to next level: <code>Fusion-the-goats</code>`,
		Hint:  `💡 Try running the container with <code>-p 8080:80</code> to expose the correct port.`,
	},
	{
		Title: "Level 2: Environment Variable Secret",
		Clue:  `🧩 Clue to next level: "LEVEL 4 IS DOCKER COMPOSE"`,
		Hint:  `💡 This app expects an environment variable named <code>SECRET_KEY</code> with a secret value.`,
	},
	{
		Title: "Level 3: Volume Puzzle",
		Clue: `🧩 Clue to next level: Build and Run an API container and connect via Docker Compose, using the following api.py code:
            <pre><code>from flask import Flask
app = Flask(__name__)

@app.route("/")
def hello():
    return "You reached the API! Go to Level 5."

if __name__ == "__main__":
    app.run(host="0.0.0.0", port=5000)</code></pre>`,
		Hint: `💡 Create a file called <code>GOAL.txt</code> into <code>/data</code> with the required content (remember the clue?).`,
	},
	{
		Title: "Level 4: Docker Compose Networking",
		Clue:  `🧩 Clue to next level: Learn about Nginx, so http://localhost:8081 will redirect us to the site of monkeytype.com.`,
		Hint:  `💡 Try using Docker Compose with two services: <code>web</code> and <code>api</code>.`,
	},
	{
		Title: "Level 5: Nginx Fun Game!",
		Clue:  `🎉 You escaped the Docker room!`,
		Hint:  `💡 Build something cool with NGINX... maybe try to build a container that exporting <a href="https://monkeytype.com" target="_blank">https://monkeytype.com</a>?`,
	},
}
