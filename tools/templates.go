package tools

import "html/template"

// {{.endpoint}} must stay outside JS string quotes: html/template
// renders it there as a quoted JSON string, slashes intact, whereas
// inside quotes it escapes every "/" as "\/".

var graphiqlPage = template.Must(template.New("graphiql").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.title}}</title>
  <style>
    html, body { height: 100%; margin: 0; overflow: hidden; width: 100%; }
    #graphiql { height: 100vh; }
  </style>
  <link rel="stylesheet" href="//cdn.jsdelivr.net/npm/graphiql@0.17.5/graphiql.css">
  <script src="//cdn.jsdelivr.net/npm/whatwg-fetch@2.0.3/fetch.min.js"></script>
  <script src="//cdn.jsdelivr.net/npm/react@16.8.6/umd/react.production.min.js"></script>
  <script src="//cdn.jsdelivr.net/npm/react-dom@16.8.6/umd/react-dom.production.min.js"></script>
  <script src="//cdn.jsdelivr.net/npm/graphiql@0.17.5/graphiql.min.js"></script>
</head>
<body>
  <div id="graphiql">Loading...</div>
  <script>
    function graphQLFetcher(graphQLParams) {
      return fetch({{.endpoint}}, {
        method: 'post',
        headers: {
          'Accept': 'application/json',
          'Content-Type': 'application/json'
        },
        body: JSON.stringify(graphQLParams),
        credentials: 'include'
      }).then(function (response) {
        return response.json();
      });
    }
    ReactDOM.render(
      React.createElement(GraphiQL, { fetcher: graphQLFetcher }),
      document.getElementById('graphiql')
    );
  </script>
</body>
</html>
`))

var playgroundPage = template.Must(template.New("playground").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.title}}</title>
  <link rel="stylesheet" href="//cdn.jsdelivr.net/npm/graphql-playground-react@1.7.26/build/static/css/index.css">
  <link rel="shortcut icon" href="//cdn.jsdelivr.net/npm/graphql-playground-react@1.7.26/build/favicon.png">
  <script src="//cdn.jsdelivr.net/npm/graphql-playground-react@1.7.26/build/static/js/middleware.js"></script>
</head>
<body>
  <div id="root"></div>
  <script>
    window.addEventListener('load', function () {
      GraphQLPlayground.init(document.getElementById('root'), {
        endpoint: {{.endpoint}}
      });
    });
  </script>
</body>
</html>
`))

var voyagerPage = template.Must(template.New("voyager").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.title}}</title>
  <style>
    html, body { height: 100%; margin: 0; overflow: hidden; width: 100%; }
    #voyager { height: 100vh; }
  </style>
  <link rel="stylesheet" href="//cdn.jsdelivr.net/npm/graphql-voyager@1.0.0-rc.31/dist/voyager.css">
  <script src="//cdn.jsdelivr.net/npm/react@16.8.6/umd/react.production.min.js"></script>
  <script src="//cdn.jsdelivr.net/npm/react-dom@16.8.6/umd/react-dom.production.min.js"></script>
  <script src="//cdn.jsdelivr.net/npm/graphql-voyager@1.0.0-rc.31/dist/voyager.min.js"></script>
</head>
<body>
  <div id="voyager">Loading...</div>
  <script>
    function introspectionProvider(query) {
      return fetch({{.endpoint}}, {
        method: 'post',
        headers: {
          'Accept': 'application/json',
          'Content-Type': 'application/json'
        },
        body: JSON.stringify({ query: query }),
        credentials: 'include'
      }).then(function (response) {
        return response.json();
      });
    }
    GraphQLVoyager.init(document.getElementById('voyager'), {
      introspection: introspectionProvider
    });
  </script>
</body>
</html>
`))
